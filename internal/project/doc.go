// Package project stores exported photos on disk and lists them back.
//
// Every export becomes one JPEG in a single flat directory. File names carry
// a common prefix, the export time in Unix milliseconds and a short random
// suffix:
//
//	LUMIQ_1718000000000_3f2a9c1b.jpg
//
// List returns only files with the prefix, newest first, which is the order
// a gallery of recent projects shows them in.
package project
