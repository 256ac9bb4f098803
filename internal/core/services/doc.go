// Package services implements the driving port interfaces.
// Services contain the core rubric logic and call out to driven
// ports (field stores, configuration) through interfaces.
//
// Services are pure Go with no CGO.
package services
