package videogen

import (
	"context"
	"errors"
	"testing"
)

func TestChatSession_FirstExchange(t *testing.T) {
	var gotTurns []ChatTurn
	var gotSystem string

	mock := &MockChatCompleter{
		CompleteFunc: func(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error) {
			gotTurns = turns
			gotSystem = systemInstruction
			return "Hallo! Was drehen wir heute?", nil
		},
	}

	chat := NewChatSession(mock)

	history := chat.History()
	if len(history) != 1 {
		t.Fatalf("fresh session must hold only the seed greeting, got %d turns", len(history))
	}
	if history[0].Speaker != SpeakerAssistant {
		t.Error("seed greeting must be an assistant turn")
	}

	reply := chat.Send(context.Background(), "Hallo")
	if reply != "Hallo! Was drehen wir heute?" {
		t.Errorf("unexpected reply %q", reply)
	}

	history = chat.History()
	if len(history) != 3 {
		t.Fatalf("expected transcript of length 3, got %d", len(history))
	}
	want := []Speaker{SpeakerAssistant, SpeakerUser, SpeakerAssistant}
	for i, speaker := range want {
		if history[i].Speaker != speaker {
			t.Errorf("turn %d: got %q, want %q", i, history[i].Speaker, speaker)
		}
	}
	if history[1].Text != "Hallo" {
		t.Errorf("user turn text: got %q", history[1].Text)
	}

	// The outbound context is the full transcript including the new user
	// turn, alongside the fixed persona instruction.
	if len(gotTurns) != 2 {
		t.Errorf("completer should receive greeting + user turn, got %d", len(gotTurns))
	}
	if gotSystem == "" {
		t.Error("completer must receive the persona system instruction")
	}
}

func TestChatSession_FallbackOnFailure(t *testing.T) {
	mock := &MockChatCompleter{
		CompleteFunc: func(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error) {
			return "", errors.New("backend unreachable")
		},
	}

	chat := NewChatSession(mock, WithFallbackLine("Give me a second and ask again."))

	reply := chat.Send(context.Background(), "Hallo")
	if reply != "Give me a second and ask again." {
		t.Errorf("failure must return the scripted fallback, got %q", reply)
	}

	history := chat.History()
	if len(history) != 3 {
		t.Fatalf("fallback must still append an assistant turn, got %d turns", len(history))
	}
	if history[2].Text != "Give me a second and ask again." {
		t.Errorf("last turn should be the fallback line, got %q", history[2].Text)
	}
}

func TestChatSession_FullHistoryIsSentEveryTurn(t *testing.T) {
	var lastLen int
	mock := &MockChatCompleter{
		CompleteFunc: func(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error) {
			lastLen = len(turns)
			return "sure", nil
		},
	}

	chat := NewChatSession(mock)
	chat.Send(context.Background(), "first")
	chat.Send(context.Background(), "second")
	chat.Send(context.Background(), "third")

	// greeting + 3 user turns + 2 prior assistant turns = 6 at the third call
	if lastLen != 6 {
		t.Errorf("expected the full transcript (6 turns) on the third send, got %d", lastLen)
	}
}

func TestChatSession_Clear(t *testing.T) {
	chat := NewChatSession(&MockChatCompleter{}, WithGreeting("Welcome back."))
	chat.Send(context.Background(), "Hallo")

	chat.Clear()

	history := chat.History()
	if len(history) != 1 || history[0].Text != "Welcome back." {
		t.Errorf("clear must re-seed only the greeting, got %v", history)
	}
}
