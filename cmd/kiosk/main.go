package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"slot_kiosk/internal/app"
	"slot_kiosk/pkg/pass"
)

func main() {
	hash := flag.String("hash-password", "", "print the bcrypt hash of a console password and exit")
	flag.Parse()

	if *hash != "" {
		h, err := pass.HashPassword(*hash)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	if err := app.NewApp().Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
