package main

import "internhub/internal/app"

// @title           InternHub API
// @version         1.0
// @description     Internship placement backend: task submission and review workflow, ratings, notifications.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
