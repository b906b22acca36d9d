//go:build tinygo && baremetal

package main

import (
	"context"

	"fmradio/app"
	"fmradio/config"
	"fmradio/console"
	"fmradio/hal"
)

func main() {
	h := hal.New()
	app.Run(h, config.Default(), func(s *app.System) {
		sp := h.Serial()
		if sp == nil {
			return
		}
		go func() {
			if err := console.Serve(context.Background(), sp, sp, s); err != nil {
				h.Logger().WriteLineString("console: " + err.Error())
			}
		}()
	})
}
