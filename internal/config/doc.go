// Package config manages user-level settings stored at
// ~/.devautomator/config.yaml. Besides plain key/value lookups, the
// "params" section supplies default template parameter values to the
// scaffold command.
package config
