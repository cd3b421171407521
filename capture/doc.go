// Package capture streams raw bytes from a randomness source attached over a
// serial (UART) link into a writer, counting set bits on the way so the ones
// percentage is known once the capture completes. It also offers a line
// monitor for sources that print ASCII diagnostics instead of raw bytes.
package capture
