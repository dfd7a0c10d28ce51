// ABOUTME: Basic example showing article extraction with the readerview library
// ABOUTME: Demonstrates minimal configuration, batch extraction and Markdown output

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"readerview/readerlib"
)

func main() {
	client, err := readerlib.NewClient(readerlib.WithFetchTimeout(10 * time.Second))
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx := context.Background()

	fmt.Println("=== Extracting Single Article ===")
	article, err := client.Extract(ctx, "https://go.dev/blog/go1.22")
	if err != nil {
		log.Printf("Error extracting article: %s\n", readerlib.ErrorMessage(err))
	} else {
		fmt.Printf("Title: %s\n", article.Title)
		fmt.Printf("Words: %d\n", article.Length)
		if article.Excerpt != nil {
			fmt.Printf("Excerpt: %s\n", *article.Excerpt)
		}
	}

	fmt.Println("\n=== Extracting Multiple Articles ===")
	urls := []string{
		"https://go.dev/blog/go1.22",
		"https://go.dev/blog/loopvar-preview",
		"not a url",
	}
	for _, r := range client.ExtractMany(ctx, urls) {
		if r.Success {
			fmt.Printf("- %s (%d words)\n", r.Data.Title, r.Data.Length)
		} else {
			fmt.Printf("- %s failed: %s\n", r.URL, r.Error)
		}
	}

	fmt.Println("\n=== Markdown ===")
	md, err := client.Markdown(ctx, "https://go.dev/blog/go1.22")
	if err != nil {
		log.Printf("Error rendering markdown: %s\n", readerlib.ErrorMessage(err))
		return
	}
	if len(md) > 400 {
		md = md[:400] + "..."
	}
	fmt.Println(md)
}
