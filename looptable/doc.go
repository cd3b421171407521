// Package looptable builds two-level loop-length lookup tables for hardware
// configuration selectors and renders them as nested Verilog case blocks.
//
// The outer (fast) level indexes the base sequence directly. The inner (slow)
// level scales each fast value by a multiplier and snaps the product to the
// closest element of the same base sequence. Both levels end with a default
// entry assigning the don't-care Sentinel.
package looptable
