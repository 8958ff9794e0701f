// Package logger provides leveled output for envcrypt commands.
//
// # Verbosity Levels
//
//   - --verbose: info and warning messages
//   - --debug: everything, including per-variable details
//
// Without flags only WarnfAlways reaches the terminal; results are shown
// through the command's spinner message instead.
//
// # Log Methods
//
//	Logger.Infof()           // --verbose or --debug
//	Logger.Debugf()          // --debug only
//	Logger.Warnf()           // --verbose or --debug
//	Logger.WarnfAlways()     // always
//	Logger.Errorf()          // --debug only
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// Never pass a secret value to a log method. Log variable names, byte
// lengths and format versions only.
package logger
