// go-app/main.go
// App Engine main package for the GoXword puzzle server
// Copyright (C) 2025 The GoXword Authors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	xword "github.com/crosshatch/GoXword"
)

// Bearer authorization token, if any
var ACCESS_KEY string

// Corresponding Authorization header (or "" if no auth required)
var AUTH_HEADER string

// Allowed access control (CORS) origins
var ALLOWED_ORIGINS string = "*" // Default to all origins allowed

func validate(w http.ResponseWriter, r *http.Request, req any) bool {
	// Set CORS headers
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", ALLOWED_ORIGINS)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Handle preflight OPTIONS request
	if r.Method == "OPTIONS" {
		// Returning false simply causes the handler to return the response headers
		return false
	}

	// We only accept POST requests
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return false
	}
	// Check for a bearer authorization token,
	// which must match the environment variable
	// ACCESS_KEY, if present
	if AUTH_HEADER != "" {
		authHeader := r.Header.Get("Authorization")
		if authHeader != AUTH_HEADER {
			http.Error(w,
				fmt.Sprintf(
					"Authorization header mismatch: got '%s'",
					authHeader,
				),
				http.StatusUnauthorized,
			)
			return false
		}
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		// Not valid JSON
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func generateHandler(w http.ResponseWriter, r *http.Request) {
	var req xword.GenerateRequest
	if !validate(w, r, &req) {
		return
	}
	xword.HandleGenerateRequest(r.Context(), w, req)
}

func wordcheckHandler(w http.ResponseWriter, r *http.Request) {
	var req xword.WordCheckRequest
	if !validate(w, r, &req) {
		return
	}
	xword.HandleWordCheckRequest(w, req)
}

func themesHandler(w http.ResponseWriter, r *http.Request) {
	var req xword.ThemesRequest
	if !validate(w, r, &req) {
		return
	}
	xword.HandleThemesRequest(w, req)
}

func puzzleHandler(w http.ResponseWriter, r *http.Request) {
	var req xword.PuzzleRequest
	if !validate(w, r, &req) {
		return
	}
	xword.HandlePuzzleRequest(r.Context(), w, req)
}

func warmupHandler(w http.ResponseWriter, r *http.Request) {
	// No concrete action required
	log.Println("Warmup request received")
}

func main() {
	// Log to Google App Engine
	log.SetOutput(os.Stderr)
	log.Printf("Puzzle service starting, Go version %s", runtime.Version())
	// Load environment variables from a .env file, if present
	_ = godotenv.Load()
	// Figure out the authorization header, if required
	ACCESS_KEY = os.Getenv("ACCESS_KEY")
	if ACCESS_KEY != "" {
		AUTH_HEADER = "Bearer " + ACCESS_KEY
	}
	// Use an external word list if one is configured. A list that
	// cannot be loaded is not fatal; the built-in list serves instead.
	if path := os.Getenv("WORDLIST"); path != "" {
		lexicon, err := xword.LoadLexiconOrDefault(path, xword.MaxWordLength)
		if err != nil {
			log.Printf("%v; using the built-in word list", err)
		} else {
			xword.DefaultLexicon = lexicon
			log.Printf("Word list loaded from %s: %d words", path, lexicon.WordCount())
		}
	}
	// Store puzzles in Cloud Datastore if a project is
	// configured, otherwise in memory
	if project := os.Getenv("DATASTORE_PROJECT"); project != "" {
		store, err := xword.NewDatastoreStore(context.Background(), project)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		xword.Store = store
		log.Printf("Puzzle store: Datastore project %s", project)
	} else {
		xword.Store = xword.NewMemoryStore()
		log.Printf("Puzzle store: in-memory")
	}
	// Set up a dummy warmup handler
	http.HandleFunc("/_ah/warmup", warmupHandler)
	// Set up the actual service handlers
	http.HandleFunc("/generate", generateHandler)
	http.HandleFunc("/wordcheck", wordcheckHandler)
	http.HandleFunc("/themes", themesHandler)
	http.HandleFunc("/puzzle", puzzleHandler)
	// Establish the port number to listen on, defaulting to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on port %s", port)
	// Establish allowed CORS origins
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins != "" {
		log.Printf("Allowed CORS origins: %s", origins)
		ALLOWED_ORIGINS = origins
	} else {
		log.Printf("No ALLOWED_ORIGINS specified, allowing all")
	}
	// Start the server loop
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
