// Package debugger is a line oriented front end for single stepping an
// emulator, with breakpoints, a disassembly listing and a memory window.
package debugger
