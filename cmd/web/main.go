package main

import "github.com/michealohagwam/dta-backend-clean/internal/app"

func main() {
	app.Run()
}
