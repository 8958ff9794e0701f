// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize when the terminal supports it. When NO_COLOR is set
// or color is unavailable, some formatters fall back to text decorations
// so the meaning survives:
//
//	ui.Code.Sprint("envcrypt generate") // `envcrypt generate`
//	ui.Var.Sprint("API_KEY")            // $API_KEY
//	ui.Func.Sprint("APIKey")            // APIKey()
//	ui.Muted.Sprint("optional")         // (optional)
//
// Path, Success, Error, Warning and Info carry no decoration.
package ui
