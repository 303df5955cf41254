// Command tactl calls a running indicator server from the shell.
//
//	tactl -list
//	tactl -tool sma -args '{"prices":[1,2,3,4,5],"period":2}'
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	xhttp "TAMCP/pkg/http"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "server base URL")
	token := flag.String("token", os.Getenv("MCP_API_KEY"), "bearer token (default $MCP_API_KEY)")
	tool := flag.String("tool", "", "tool to call")
	args := flag.String("args", "{}", "tool arguments as a JSON object")
	list := flag.Bool("list", false, "list available tools")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if err := run(*addr, *token, *tool, *args, *list, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "tactl:", err)
		os.Exit(1)
	}
}

func run(addr, token, tool, args string, list bool, timeout time.Duration) error {
	client := xhttp.NewClient(addr, xhttp.WithToken(token), xhttp.WithTimeout(timeout))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if list {
		tools, err := client.ListTools(ctx)
		if err != nil {
			return err
		}
		for _, t := range tools {
			fmt.Printf("%-8s %s\n", t.Name, t.Description)
		}
		return nil
	}

	if tool == "" {
		return fmt.Errorf("-tool or -list is required")
	}
	if !json.Valid([]byte(args)) {
		return fmt.Errorf("-args is not valid JSON")
	}

	res, err := client.CallTool(ctx, tool, json.RawMessage(args))
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, res, "", "  "); err != nil {
		return err
	}
	fmt.Println(out.String())
	return nil
}
