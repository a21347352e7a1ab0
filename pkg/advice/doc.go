/*
Package advice implements the Advice Gateway: it turns a free-text user query into a call
to a text-generation service and returns the generated text, or a fixed fallback message
when the call fails.

Two call variants exist. Ask sends the query with the Termux/Android expert persona at
temperature 0.7. GenerateWorkflow wraps the project description in a GitHub Actions
prompt and uses the DevOps persona at temperature 0.3. Both are fixed at compile time.

The gateway never returns an error. Rejecting empty queries is the caller's
job, see ValidateQuery.

	gw := advice.New(generator, advice.WithLogger(logger))
	text := gw.Ask(ctx, "How do I fix Gradle 404 in Termux?")
*/
package advice
