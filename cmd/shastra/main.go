// Command shastra is a retrieval CLI for Hindu scripture corpora.
package main

import "github.com/shastra-labs/shastra-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
