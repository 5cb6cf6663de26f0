package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/enercast/docs.go`.
//
// @title           enercast API
// @version         1.0
// @description     Client and stand-in server for the energy consumption prediction service.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
