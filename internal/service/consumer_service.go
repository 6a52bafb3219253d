package service

import (
	"context"
	"encoding/json"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService re-embeds articles named on the index topic.
type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	articles     contract.KnowledgeArticleRepository
	vectorSearch *search.VectorSearch
	logger       logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	articles contract.KnowledgeArticleRepository,
	vectorSearch *search.VectorSearch,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		articles:     articles,
		vectorSearch: vectorSearch,
		logger:       logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexArticleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("IndexConsumer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed message will never succeed
		return
	}

	article, err := cs.articles.FindById(ctx, payload.ArticleId)
	if err != nil {
		cs.logger.Error("IndexConsumer", "Failed to load article", map[string]interface{}{
			"article_id": payload.ArticleId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if article == nil {
		// Deleted before we got to it.
		cs.logger.Warn("IndexConsumer", "Article no longer exists", map[string]interface{}{"article_id": payload.ArticleId})
		msg.Ack()
		return
	}

	cs.vectorSearch.IndexArticle(ctx, article)
	cs.logger.Info("IndexConsumer", "Article indexed", map[string]interface{}{"article_id": article.Id})
	msg.Ack()
}
