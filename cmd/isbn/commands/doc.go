// Package commands defines the isbn CLI.
//
// Commands
//
//   - recognize  Print the first ISBN found in the arguments or stdin
//   - convert    Print the first ISBN converted to ISBN-10 or ISBN-13
//   - extract    Print the first ISBN of every line of a file or stdin
//
// Every command exits with a non-zero status when no ISBN is found.
package commands
