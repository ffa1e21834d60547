package configuration

// DefaultConfig is the default configuration for the package
type DefaultConfig struct {
	Title      string                 // package title
	Parameters map[string]interface{} // parameters, nil value means the user should set it
}
