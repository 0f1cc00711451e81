package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Adda-Baaj/pocket-sync/internal/logger"
	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func testEvent() Event {
	return NewEvent("standups", "Team standups", pocket.Recording{
		ID:    "rec_1",
		Title: "Monday",
		State: pocket.StateCompleted,
		Tags:  []pocket.Tag{},
	})
}

func TestSQSPublisherSendsAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "q", queueURL: "https://sqs.local/q", client: client, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	for k, want := range map[string]string{"source_id": "standups", "recording_id": "rec_1", "recording_state": "completed"} {
		attr, ok := client.input.MessageAttributes[k]
		if !ok || aws.ToString(attr.StringValue) != want || aws.ToString(attr.DataType) != "String" {
			t.Fatalf("attribute %s = %#v", k, attr)
		}
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	rec, _ := body["recording"].(map[string]any)
	if body["source_id"] != "standups" || rec["id"] != "rec_1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{id: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
