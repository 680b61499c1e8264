// Package utils provides small helpers shared by the commands and features,
// such as splitting list-valued settings and lenient string conversions.
package utils
