package main

import "accountd/internal/app"

func main() {
	app.Run()
}
