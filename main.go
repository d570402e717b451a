package main

import (
	"errors"
	"fmt"
	"os"

	"gurtle/cli"
)

const VERSION = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "--version", "-v":
		fmt.Printf("Gurtle version %s\n", VERSION)
		return
	case "--help", "-h":
		printHelp()
		return
	case "fetch":
		RunFetch(os.Args[2:])
		return
	case "serve":
		RunServe(os.Args[2:])
		return
	case "validate":
		println("Validating configuration...")
		configPath := GetConfigPath()
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			println("Configuration file does not exist. Did you run Gurtle at least once?")
			return
		}
		if _, err := GetConfig(); err != nil {
			println("Configuration is invalid:", err.Error())
			return
		}
		println("Configuration is valid.")
		return
	case "cert":
		if len(os.Args) < 3 {
			println("Please specify 'generate' or 'obtain'. Example: gurtle cert generate localhost")
			return
		}
		if os.Args[2] == "generate" {
			if len(os.Args) < 4 {
				println("Please specify a host. Example: gurtle cert generate localhost")
				return
			}
			_, _, err := cli.GenerateSelfSignedCert(os.Args[3])
			if err != nil {
				println("Failed to generate self-signed certificate:", err.Error())
			}
			return
		} else if os.Args[2] == "obtain" {
			if len(os.Args) < 4 {
				println("Please specify a domain. Example: gurtle cert obtain example.com")
				return
			}
			fmt.Println("Obtaining TLS certificate using Let's Encrypt...")
			_, _, err := cli.GenerateACMECert(os.Args[3])
			if err != nil {
				println("Failed to obtain TLS certificate:", err.Error())
			}
			return
		}
		println("Unknown cert subcommand:", os.Args[2])
		return
	}
	println("Unknown argument:", os.Args[1])
}

func printHelp() {
	fmt.Println("Usage: gurtle <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  fetch <gurt-url> [method [body]]   Fetch a GURT URL and print the response")
	fmt.Println("  serve [dir]                        Serve a directory over GURT for local development")
	fmt.Println("  cert generate <host>               Generate a self-signed TLS certificate")
	fmt.Println("  cert obtain <domain>               Obtain a TLS certificate from Let's Encrypt")
	fmt.Println("  validate                           Validate the configuration file")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Show version information")
	fmt.Println("  --help, -h       Show this help message")
}
