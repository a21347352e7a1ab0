package termuxdev_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/termuxdev"
	"github.com/aretw0/termuxdev/pkg/adapters/memory"
)

// ExampleApp_Ask shows the gateway running against canned answers.
// In production the generator is gemini.New(...).
func ExampleApp_Ask() {
	gen := memory.NewGenerator(map[string]string{
		"How do I fix Gradle 404 in Termux?": "Run termux-change-repo.",
	})

	app, err := termuxdev.New(termuxdev.WithGenerator(gen))
	if err != nil {
		log.Fatal(err)
	}

	answer, err := app.Ask(context.Background(), "How do I fix Gradle 404 in Termux?")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(answer)

	// Anything the generator cannot answer comes back as the fixed fallback text.
	fmt.Println(app.Gateway().Ask(context.Background(), "unknown question"))

	// Output:
	// Run termux-change-repo.
	// I encountered an error trying to process your request. Please check your connection and try again.
}

// ExampleApp_Catalog lists the setup commands from the embedded catalog.
func ExampleApp_Catalog() {
	app, err := termuxdev.New()
	if err != nil {
		log.Fatal(err)
	}

	for _, step := range app.Catalog().SetupSteps {
		fmt.Printf("%s. %s\n", step.ID, step.Command)
	}

	// Output:
	// 1. pkg update && pkg upgrade -y
	// 2. pkg install git wget curl zip unzip -y
	// 3. pkg install openjdk-17 -y
	// 4. pkg install gradle -y
	// 5. java -version && gradle -v
}
