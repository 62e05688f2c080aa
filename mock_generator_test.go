package videogen

import (
	"context"
)

// MockVideoGenerator is a mock implementation of VideoGenerator.
type MockVideoGenerator struct {
	SubmitFunc func(ctx context.Context, req *GenerationRequest) (*Operation, error)
	PollFunc   func(ctx context.Context, op *Operation) (*Operation, error)
	FetchFunc  func(ctx context.Context, op *Operation) (*GeneratedVideo, error)
	ModelsFunc func() []ModelInfo
	CloseFunc  func() error
}

func (m *MockVideoGenerator) Submit(ctx context.Context, req *GenerationRequest) (*Operation, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &Operation{Name: "op-mock", Done: true, VideoURI: "videos/mock"}, nil
}

func (m *MockVideoGenerator) Poll(ctx context.Context, op *Operation) (*Operation, error) {
	if m.PollFunc != nil {
		return m.PollFunc(ctx, op)
	}
	done := *op
	done.Done = true
	return &done, nil
}

func (m *MockVideoGenerator) Fetch(ctx context.Context, op *Operation) (*GeneratedVideo, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, op)
	}
	return &GeneratedVideo{Data: []byte("fake-video"), MIMEType: "video/mp4", URI: op.VideoURI}, nil
}

func (m *MockVideoGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockVideoGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockChatCompleter is a mock implementation of ChatCompleter.
type MockChatCompleter struct {
	CompleteFunc func(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error)
}

func (m *MockChatCompleter) Complete(ctx context.Context, turns []ChatTurn, systemInstruction string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, turns, systemInstruction)
	}
	return "ok", nil
}
