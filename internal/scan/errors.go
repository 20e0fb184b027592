package scan

import "errors"

var (
	errNoUsableInterface = errors.New("no usable network interface found")
	errNoIPv4Address     = errors.New("no IPv4 address found on interface")
)
