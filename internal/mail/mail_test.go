package mail

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	assert := assert.New(t)

	templates, err := NewTemplates("")
	require.NoError(t, err)

	body, err := templates.Render(TemplateConfirmation, map[string]string{
		"Name": "Ana",
		"URL":  "http://localhost/api/confirmar?token=abc",
	})
	assert.Nil(err)
	assert.Contains(body, "Ana")
	assert.Contains(body, "token=abc")

	_, err = templates.Render("missing.html", nil)
	assert.Error(err)
}

func TestNewTransport(t *testing.T) {
	assert := assert.New(t)

	_, ok := NewTransport(Config{}).(*logTransport)
	assert.True(ok)
	assert.Nil(NewTransport(Config{}).Send(context.Background(), &Message{To: "a@b.c"}))

	_, ok = NewTransport(Config{Host: "smtp.example.com", Port: 25}).(*smtpTransport)
	assert.True(ok)
}

// fakeSMTPServer accepts one session and returns the DATA payload it received.
func fakeSMTPServer(t *testing.T) (string, <-chan string) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	received := make(chan string, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		write := func(line string) { conn.Write([]byte(line + "\r\n")) }
		write("220 localhost ESMTP")

		var data strings.Builder
		inData := false
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					received <- data.String()
					write("250 OK")
					continue
				}
				data.WriteString(line)
				continue
			}
			switch cmd := strings.ToUpper(strings.TrimSpace(line)); {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case cmd == "DATA":
				inData = true
				write("354 go ahead")
			case cmd == "QUIT":
				write("221 bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	return listener.Addr().String(), received
}

func TestSMTPTransport(t *testing.T) {
	assert := assert.New(t)

	addr, received := fakeSMTPServer(t)
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	portNumber, err := strconv.Atoi(port)
	require.NoError(t, err)

	transport := NewTransport(Config{Host: host, Port: portNumber, From: "no-reply@cybermaker.local"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = transport.Send(ctx, &Message{To: "ana@example.com", Subject: "Confirme sua conta", HTML: "<p>oi</p>"})
	assert.Nil(err)

	select {
	case data := <-received:
		assert.Contains(data, "To: ana@example.com")
		assert.Contains(data, "Subject: Confirme sua conta")
		assert.Contains(data, "<p>oi</p>")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestBuildHeaders(t *testing.T) {
	assert := assert.New(t)
	transport := &smtpTransport{config: Config{From: "no-reply@cybermaker.local", FromName: "Equipe\r\nBcc: x@y"}}

	t.Run("Line breaks folded", func(t *testing.T) {
		data := transport.build(&Message{
			To:      "ana@example.com",
			Subject: "Evil\r\nBcc: victim@example.com\r\nX-Injected: 1 quer falar com voce",
			HTML:    "<p>oi</p>",
		})
		head, body, found := strings.Cut(data, "\r\n\r\n")
		assert.True(found)
		assert.Equal("<p>oi</p>", body)
		for _, line := range strings.Split(head, "\r\n") {
			assert.False(strings.HasPrefix(line, "Bcc:"), line)
			assert.False(strings.HasPrefix(line, "X-Injected:"), line)
		}
		assert.Contains(head, "Subject: Evil Bcc: victim@example.com X-Injected: 1 quer falar com voce")
		assert.Contains(head, "From: Equipe Bcc: x@y <no-reply@cybermaker.local>")
	})

	t.Run("Non-ASCII subject encoded", func(t *testing.T) {
		data := transport.build(&Message{To: "ana@example.com", Subject: "Ana quer falar com você"})
		assert.Contains(data, "Subject: =?utf-8?q?")
		assert.NotContains(data, "você")
	})

	t.Run("Recipient with line break refused", func(t *testing.T) {
		err := transport.Send(context.Background(), &Message{To: "ana@example.com\r\nBcc: x@y"})
		assert.ErrorIs(err, ErrorInvalidHeader)
	})
}
