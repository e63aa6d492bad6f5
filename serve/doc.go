// Package serve provides the host transport glue for a web.App: an
// http.Server configured from environment variables, with graceful
// shutdown, optional cleartext HTTP/2, and server identification headers.
//
// Configuration is loaded from the environment (a .env file is applied
// first when present):
//
//	cfg, err := serve.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := serve.New(cfg, app)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package serve
