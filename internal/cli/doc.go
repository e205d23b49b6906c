// Package cli turns topicprobe's command line into an app.Config. Usage
// errors come back as an ExitError carrying exit code 2.
package cli
