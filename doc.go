/*
Package amigurumi generates crochet patterns for amigurumi spheres.

Given the circumference of a sphere in stitches and a stitch type, it computes how
many stitches every round needs so the work follows a sine profile from pole to
pole, then writes the rounds out as crochet instructions: where to increase and
decrease, how to repeat, when to join and chain, and when to stuff.

# Concept

The algorithm lives in the pure package pkg/pattern. This package wraps it in a
Generator that adds the parts a service needs: a pluggable cache
(pkg/adapters/memory, pkg/adapters/redis), non-fatal warnings, structured logging
and lifecycle hooks for metrics. The same Generator backs the CLI, the HTTP API
and the MCP server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/amigurumi"
		"github.com/aretw0/amigurumi/pkg/request"
	)

	func main() {
		req, err := request.Parse(request.Raw{Circumference: "20", Stitch: "sc", Joined: true})
		if err != nil {
			log.Fatal(err)
		}

		result, err := amigurumi.New().Generate(context.Background(), req)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(result.Title())
		for i, line := range result.Lines() {
			fmt.Printf("Round %d: %s\n", i+1, line)
		}
	}
*/
package amigurumi
