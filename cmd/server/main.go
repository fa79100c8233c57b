package main

import "ycsmatch/internal/app"

// @title           YCS Match API
// @version         1.0
// @description     Authentication backend and upstream proxy for the matching site.
// @BasePath        /
func main() {
	app.Run()
}
