package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hvdyinv4688hbv/bookly/internal/cli"
	"github.com/hvdyinv4688hbv/bookly/internal/nlp"
	"github.com/hvdyinv4688hbv/bookly/internal/quiz"
	"github.com/hvdyinv4688hbv/bookly/internal/scores"
)

func main() {
	defaultScores := os.Getenv("BOOKLY_SCORES")
	if defaultScores == "" {
		defaultScores = "quiz_scores.json"
	}

	scoresPath := flag.String("scores", defaultScores, "path to the score history file")
	delay := flag.Duration("delay", 2*time.Second, "pause between quiz questions")
	seed := flag.Int64("seed", 0, "random seed for question generation (0 = time-based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	analyzer := nlp.NewProse()
	gen := quiz.NewGenerator(analyzer, rng)
	store := scores.Open(*scoresPath)

	app := cli.New(analyzer, gen, store, *delay)
	if err := app.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("bookly: %v", err)
	}
}
