package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jtbits/baboogee/pkg/client"
	"github.com/jtbits/baboogee/pkg/protocol"
)

func main() {
	addr := flag.String("address", "127.0.0.1:42069", "server address to dial")
	flag.Parse()

	c, err := client.Dial(*addr)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *addr, err)
	}
	defer c.Close()

	state := client.NewState()

	go func() {
		for {
			pkt, err := c.Recv()
			if err != nil {
				log.Printf("connection closed: %v", err)
				os.Exit(0)
			}
			state.Apply(pkt)
			fmt.Print("\033[2J\033[H") // clear screen, home cursor
			fmt.Print(state.Render())
			fmt.Printf("hp=%d center=%v\n", state.HP, state.Center)
			if state.Dead {
				fmt.Println("you died")
				os.Exit(0)
			}
		}
	}()

	fmt.Println("commands: w/a/s/d move, shoot <w|a|s|d>, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			return
		case "shoot":
			if len(fields) != 2 {
				fmt.Println("usage: shoot <w|a|s|d>")
				continue
			}
			if dir, ok := parseDirection(fields[1]); ok {
				c.SendShoot(dir)
			}
		default:
			if dir, ok := parseDirection(fields[0]); ok {
				c.SendMove(dir)
			}
		}
	}
}

func parseDirection(s string) (protocol.Direction, bool) {
	switch s {
	case "w":
		return protocol.Up, true
	case "s":
		return protocol.Down, true
	case "a":
		return protocol.Left, true
	case "d":
		return protocol.Right, true
	default:
		return 0, false
	}
}
