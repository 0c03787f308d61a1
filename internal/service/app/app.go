package app

import (
	"encoding/json"
	"fmt"

	"livin/internal/model"
	"livin/internal/service/chat"
	"livin/internal/utils/log"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

type (
	App struct {
		app     *tview.Application
		chatbox *tview.TextView
		input   *tview.InputField

		host   string
		token  string
		userID string

		recipientID string

		conn *websocket.Conn
	}
)

func NewApp(host string) *App {
	return &App{
		app:  tview.NewApplication(),
		host: host,
	}
}

func (c *App) Run(email, password string) {
	lr, err := c.login(email, password)
	if err != nil {
		log.Fatal("login failed", zap.Error(err))
	}
	c.token = lr.Token
	c.userID = lr.UserID

	var recipientID string
	fmt.Print("Enter recipient's user id: ")
	_, err = fmt.Scan(&recipientID) // reads until whitespace
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	c.recipientID = recipientID

	history, err := c.fetchHistory(c.recipientID)
	if err != nil {
		log.Fatal("fetch history failed", zap.Error(err))
	}

	c.conn, err = c.dialChat()
	if err != nil {
		log.Fatal("connect to chat server failed", zap.Error(err))
	}

	if err := c.joinRoom(); err != nil {
		log.Fatal("join room failed", zap.Error(err))
	}

	go c.listenOnSocket()
	c.renderUI(history)
}

func (c *App) Stop() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.app.Stop()
}

func (c *App) joinRoom() error {
	payload, err := chat.NewEnvelope(chat.EventJoinRoom, &chat.JoinRoomPayload{
		UserID: c.userID,
	})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// blocking function
func (c *App) renderUI(history []model.Message) {
	c.chatbox = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	c.chatbox.SetBorder(true).SetTitle(fmt.Sprintf(" Chat with %s ", c.recipientID))

	for i := range history {
		c.printMessage(&history[i])
	}
	c.chatbox.ScrollToEnd()

	c.input = tview.NewInputField().
		SetLabel("Message: ").
		SetFieldWidth(0)
	c.input.SetBorder(true).SetTitle(" New Message ")

	c.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			text := c.input.GetText()
			if text == "" {
				return
			}
			c.input.SetText("")

			go func(msg string) {
				err := c.sendMessage(msg)
				if err != nil {
					c.app.Suspend(func() {
						log.Error("send message failed", zap.Error(err))
					})
				}
			}(text)
		}
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(c.chatbox, 0, 1, false).
		AddItem(c.input, 3, 0, true)

	if err := c.app.SetRoot(layout, true).SetFocus(c.input).Run(); err != nil {
		log.Fatal("cannot init app", zap.Error(err))
	}
}

func (c *App) listenOnSocket() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug("web socket closed", zap.Error(err))
			c.conn.Close()
			break
		}

		var env chat.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Error("unmarshal event failed", zap.Error(err))
			continue
		}

		switch env.Event {
		case chat.EventReceiveMessage:
			var message model.Message
			if err := json.Unmarshal(env.Data, &message); err != nil {
				log.Error("unmarshal message failed", zap.Error(err))
				continue
			}

			c.app.QueueUpdateDraw(func() {
				c.printMessage(&message)
				c.chatbox.ScrollToEnd()
			})

		case chat.EventSendMessageAck:
			// delivered to the store; nothing to render

		case chat.EventSendMessageError:
			var payload chat.ErrorPayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				log.Error("unmarshal error event failed", zap.Error(err))
				continue
			}

			c.app.QueueUpdateDraw(func() {
				fmt.Fprintf(c.chatbox, "[red]error:[-] %s\n", payload.Message)
				c.chatbox.ScrollToEnd()
			})
		}
	}
}

// sendMessage submits over the socket. The message is not rendered here:
// the server echoes every stored message back to the sender, so rendering
// waits for the receiveMessage event.
func (c *App) sendMessage(msg string) error {
	payload, err := chat.NewEnvelope(chat.EventSendMessage, &chat.SendMessagePayload{
		SenderID:    c.userID,
		RecipientID: c.recipientID,
		Message:     msg,
	})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *App) printMessage(message *model.Message) {
	if message.Sender == c.userID {
		fmt.Fprintf(c.chatbox, "[yellow]You:[-] %s\n", message.Content)
		return
	}
	fmt.Fprintf(c.chatbox, "[green]%s:[-] %s\n", message.Sender, message.Content)
}
