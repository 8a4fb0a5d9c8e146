package main

import "github.com/adanyl0v/service-catalog/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustInitTracing()
	defer app.ShutdownTracing()

	app.MustOpenStore()
	defer app.CloseStore()

	app.MustListenAndServeHTTP()
}
