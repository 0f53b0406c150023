package utils

import "context"

type commandContextKey[Value any] struct {
	name string
}

func (key commandContextKey[Value]) attach(parentContext context.Context, value Value) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func (key commandContextKey[Value]) lookup(executionContext context.Context) (Value, bool) {
	var zeroValue Value
	if executionContext == nil {
		return zeroValue, false
	}
	value, available := executionContext.Value(key).(Value)
	return value, available
}

var configurationFilePathContextKey = commandContextKey[string]{name: "configurationFilePath"}

// CommandContextAccessor passes values the root command resolves down to its subcommands.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file that was loaded; empty means none was found.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return configurationFilePathContextKey.attach(parentContext, configurationFilePath)
}

// ConfigurationFilePath returns the recorded configuration file path.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return configurationFilePathContextKey.lookup(executionContext)
}
