// Package terminal hosts the test card in a terminal through tcell.
//
// The pattern is rasterized at two pixels per cell, one per half block:
// every cell prints an upper-half block whose foreground is the upper pixel
// and whose background is the lower pixel. The date and time readouts are
// overlaid as plain text in the middle of the screen.
package terminal
