package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"rps-arena/internal/api/ws"
	"rps-arena/internal/client"
	"rps-arena/internal/game"
	"rps-arena/internal/room"
)

func main() {
	url := flag.String("url", "ws://localhost:3000/ws", "server websocket URL")
	roomKey := flag.String("room", "lobby", "room to join")
	bot := flag.Bool("bot", false, "play random moves instead of reading stdin")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	c, err := client.Dial(ctx, *url, nil)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected as %s\n", c.ID())
	if err := c.JoinRoom(*roomKey); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Joined room %q, waiting for an opponent...\n", *roomKey)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reader := bufio.NewReader(os.Stdin)

	for {
		env, err := c.Next()
		if err != nil {
			fmt.Println("Connection closed:", err)
			return
		}

		switch env.Event {
		case room.EventStartGame:
			fmt.Println("Game starting!")
		case room.EventRoomFull:
			var msg string
			if err := decode(env, &msg); err == nil {
				fmt.Println(msg)
			}
			return
		case room.EventStartRound:
			var move game.Move
			if *bot {
				move = client.RandomMove(rng)
				fmt.Printf("Bot plays: %s\n", move)
			} else {
				move = prompt(reader)
			}
			if err := c.Play(*roomKey, move); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
		case room.EventRoundResult:
			var res room.RoundResultPayload
			if err := decode(env, &res); err != nil {
				continue
			}
			fmt.Printf("Round %d: %s  scores=%v\n", res.Rounds, describe(res.RoundResult, c.ID()), res.Scores)
		case room.EventGameResult:
			var res room.GameResultPayload
			if err := decode(env, &res); err != nil {
				continue
			}
			fmt.Printf("\nGame over: %s  scores=%v\n", describe(res.GameResult, c.ID()), res.Scores)
			return
		}
	}
}

// decode reports a malformed event on stderr so the caller can skip it.
func decode(env ws.Envelope, v interface{}) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		fmt.Fprintf(os.Stderr, "skipping malformed %s event: %v\n", env.Event, err)
		return err
	}
	return nil
}

func prompt(reader *bufio.Reader) game.Move {
	for {
		fmt.Print("Your move (rock/paper/scissors) > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return game.Move("")
		}
		mv := game.Move(strings.ToLower(strings.TrimSpace(line)))
		if mv.Valid() {
			return mv
		}
		fmt.Println("Invalid move. Try again.")
	}
}

func describe(result, self string) string {
	switch result {
	case game.Draw:
		return "draw"
	case self:
		return "you win"
	default:
		return "you lose"
	}
}
