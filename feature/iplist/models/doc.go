// Package models defines the gorm models of the reconciliation run history.
package models
