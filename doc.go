/*
Package termuxdev is a small advice gateway for developers running Java and Gradle inside
Termux on Android.

It bundles two things: a static catalog (setup steps, package repositories, GitHub Actions
templates, documentation links) and a gateway that forwards free-text questions to a
generative-language service with a fixed system instruction. The gateway never returns an
error to its caller. When the service fails the caller receives a fixed, human-readable
fallback message instead.

# Usage

	app, err := termuxdev.New(
		termuxdev.WithGenerator(gemini.New(gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY")})),
	)
	if err != nil {
		log.Fatal(err)
	}

	answer, err := app.Ask(ctx, "How do I fix Gradle 404 in Termux?")
	if err != nil {
		// Only input errors end up here (empty or oversized query).
		log.Fatal(err)
	}
	fmt.Println(answer)

The same App backs every surface shipped with the module: the HTML page and JSON API
(pkg/adapters/http), the MCP server (pkg/adapters/mcp) and the termuxdev command.
*/
package termuxdev
