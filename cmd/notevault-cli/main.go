// Command notevault-cli is a small terminal client for a notevault
// server, mostly useful for poking at a dev instance.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~mpalumbo/notevault/pkg/client"
)

func main() {
	server := flag.String("server", "http://localhost:9001", "base URL of the notevault server")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	c := client.New(*server)

	switch args[0] {
	case "register":
		if len(args) != 2 {
			usage()
		}
		requireCredentials(*email, *password)
		user, err := c.Register(args[1], *email, *password)
		if err != nil {
			log.Fatalf("register failed: %v", err)
		}
		fmt.Printf("registered user %d (%s)\n", user.ID, user.Email)

	case "notes":
		requireCredentials(*email, *password)
		if err := c.Login(*email, *password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		runNotesCommand(c, args[1:])
		if err := c.Logout(); err != nil {
			log.Fatalf("logout failed: %v", err)
		}

	default:
		usage()
	}
}

func runNotesCommand(c *client.Client, args []string) {
	if len(args) == 0 {
		usage()
	}

	switch args[0] {
	case "list":
		notes, err := c.Notes()
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		for _, note := range notes {
			fmt.Printf("%d\t%s\n", note.ID, note.Content)
		}

	case "count":
		count, err := c.CountNotes()
		if err != nil {
			log.Fatalf("count failed: %v", err)
		}
		fmt.Println(count)

	case "add":
		if len(args) < 2 {
			usage()
		}
		note, err := c.CreateNote(strings.Join(args[1:], " "))
		if err != nil {
			log.Fatalf("add failed: %v", err)
		}
		fmt.Printf("created note %d\n", note.ID)

	case "del":
		if len(args) != 2 {
			usage()
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			log.Fatalf("invalid note id %q", args[1])
		}
		if err := c.DeleteNote(id); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Printf("deleted note %d\n", id)

	default:
		usage()
	}
}

func requireCredentials(email, password string) {
	if email == "" || password == "" {
		log.Fatal("missing -email or -password")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  notevault-cli [-server URL] -email E -password P register <username>
  notevault-cli [-server URL] -email E -password P notes list
  notevault-cli [-server URL] -email E -password P notes count
  notevault-cli [-server URL] -email E -password P notes add <content...>
  notevault-cli [-server URL] -email E -password P notes del <id>
`)
	os.Exit(2)
}
