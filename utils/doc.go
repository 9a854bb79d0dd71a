// Package utils provides small formatting helpers shared by the output
// packages.
//
// It contains:
//   - Time formatting and conversion utilities
//   - Presentable distance and duration strings for riders
package utils
