package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"p9e.in/agrogreen/config"
	"p9e.in/agrogreen/handlers"
	"p9e.in/agrogreen/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}
	config.Connect()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Daily insurance expiry sweep for the alert notifications
	go runExpirySweep()

	handler := routes.RegisterRoutes()
	handlerWithCORS := enableCORS(handler)
	log.Println("Server starting at port", port)
	log.Fatal(http.ListenAndServe(":"+port, handlerWithCORS))
}

func runExpirySweep() {
	ns := handlers.NewNotificationService()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	ns.NotifyExpiringInsurance(time.Now())
	for t := range ticker.C {
		ns.NotifyExpiringInsurance(t)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-View-Source, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
