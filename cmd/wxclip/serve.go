package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/web"
)

// Run executes the serve command. It blocks until the context is
// canceled, then shuts the server down.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := os.MkdirAll(c.Base, 0755); err != nil {
		return wxclip.Errorf(wxclip.EINVALID, "cannot create base directory %s: %s", c.Base, err)
	}

	srv := web.NewServer()
	srv.Addr = c.Addr
	srv.BaseDir = c.Base
	srv.Logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	srv.NewRunner = deps.NewRunner
	srv.Settings = deps.Settings

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wxclip.ErrorMessage(err))
		return err
	}
	defer srv.Close()

	fmt.Fprintf(deps.Stdout, "Listening on %s (files under %s)\n", srv.URL(), c.Base)

	<-deps.Ctx.Done()
	fmt.Fprintln(deps.Stdout, "Shutting down")
	return nil
}
