package coinbase

import (
	"errors"
	"fmt"
)

//
// ErrUnknownEnvironment is returned by the client constructors when asked to talk to anything
// other than the sandbox or live API.
//
var ErrUnknownEnvironment = errors.New("unknown Coinbase Pro environment")

//
// Environment is an enum that represents the two Coinbase Pro deployments a client can talk to. Be
// sure to test your code against the sandbox before pointing it at the live API.
//
type Environment int

const (
	Sandbox Environment = iota
	Live
)

//
// ParseEnvironment maps "sandbox" or "live" to the matching Environment.
//
func ParseEnvironment(name string) (Environment, error) {
	switch name {
	case "sandbox":
		return Sandbox, nil
	case "live":
		return Live, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
}

//
// BaseURL returns the root URL of the environment's REST API, or an error if the value is not one
// of the defined environments.
//
func (o Environment) BaseURL() (string, error) {
	switch o {
	case Sandbox:
		return SandboxURL, nil
	case Live:
		return LiveURL, nil
	}

	return "", fmt.Errorf("%w: %d", ErrUnknownEnvironment, int(o))
}

func (o Environment) String() string {
	switch o {
	case Sandbox:
		return "sandbox"
	case Live:
		return "live"
	}

	return fmt.Sprintf("Environment(%d)", int(o))
}
