package inhibit

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverName      = "org.freedesktop.ScreenSaver"
	screenSaverPath      = "/org/freedesktop/ScreenSaver"
	screenSaverInterface = "org.freedesktop.ScreenSaver"
)

// DBusClient defines the D-Bus operations used to hold a screensaver inhibition.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/Taro3/linux-mp4-test/internal/inhibit DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// GetNameOwner returns the unique name that owns the given well-known name
	GetNameOwner(name string) (string, error)

	// Inhibit asks the screensaver service to stay off and returns its cookie
	Inhibit(ctx context.Context, appName, reason string) (uint32, error)

	// UnInhibit releases the inhibition identified by cookie
	UnInhibit(ctx context.Context, cookie uint32) error
}

// StdDBusClient is the real implementation using godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient opens a private connection to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

// GetNameOwner returns the unique name that owns the given well-known name
func (c *StdDBusClient) GetNameOwner(name string) (string, error) {
	var owner string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

// Inhibit calls org.freedesktop.ScreenSaver.Inhibit
func (c *StdDBusClient) Inhibit(ctx context.Context, appName, reason string) (uint32, error) {
	var cookie uint32
	obj := c.conn.Object(screenSaverName, dbus.ObjectPath(screenSaverPath))
	call := obj.CallWithContext(ctx, screenSaverInterface+".Inhibit", 0, appName, reason)
	if err := call.Store(&cookie); err != nil {
		return 0, fmt.Errorf("inhibit call failed: %w", err)
	}
	return cookie, nil
}

// UnInhibit calls org.freedesktop.ScreenSaver.UnInhibit
func (c *StdDBusClient) UnInhibit(ctx context.Context, cookie uint32) error {
	obj := c.conn.Object(screenSaverName, dbus.ObjectPath(screenSaverPath))
	if err := obj.CallWithContext(ctx, screenSaverInterface+".UnInhibit", 0, cookie).Err; err != nil {
		return fmt.Errorf("uninhibit call failed: %w", err)
	}
	return nil
}
