package notifiers

import (
	"crypto/tls"
	"encoding/json"

	"github.com/nsqio/go-nsq"
	"go.uber.org/zap"
)

// Nsq notify by nsq
type Nsq struct {
	topic    string
	producer *nsq.Producer
}

// NewNsq create new nsq notifier, tls is enabled when a certificate is given
func NewNsq(broker, topic, tlsCert, tlsKey string) (*Nsq, error) {
	config := nsq.NewConfig()

	if tlsCert != "" {
		cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
		if err != nil {
			zap.L().Error("init tls certificate failed",
				zap.Error(err),
				zap.String("tlsCert", tlsCert),
				zap.String("tlsKey", tlsKey))
			return nil, err
		}

		config.TlsV1 = true
		config.TlsConfig = &tls.Config{
			InsecureSkipVerify: true,
			Certificates:       []tls.Certificate{cert},
		}
	}

	producer, err := nsq.NewProducer(broker, config)
	if err != nil {
		zap.L().Error("init nsq producer failed",
			zap.Error(err),
			zap.String("broker", broker))
		return nil, err
	}
	producer.SetLogger(nil, nsq.LogLevelError)

	return &Nsq{topic: topic, producer: producer}, nil
}

// Notify publish the notice as json
func (s Nsq) Notify(notice *DividendNotice) {
	buffer, err := json.Marshal(notice)
	if err != nil {
		zap.L().Warn("marshal dividend notice failed",
			zap.Error(err),
			zap.Any("notice", notice))
		return
	}

	err = s.producer.Publish(s.topic, buffer)
	if err != nil {
		zap.L().Warn("publish dividend notice failed",
			zap.Error(err),
			zap.String("topic", s.topic),
			zap.Any("notice", notice))
		return
	}

	zap.L().Info("publish dividend notice success",
		zap.String("topic", s.topic),
		zap.String("ticker", notice.Ticker))
}

// Close close producer
func (s Nsq) Close() {
	if s.producer == nil {
		return
	}

	s.producer.Stop()
}
