package stores

import (
	"bytes"
	"compress/gzip"

	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// zip encode and gzip
func zip(encoder quotes.Encoder) ([]byte, error) {
	buffer := new(bytes.Buffer)
	gw, err := gzip.NewWriterLevel(buffer, gzip.BestCompression)
	if err != nil {
		zap.L().Error("create gzip writer failed", zap.Error(err))
		return nil, err
	}

	err = encoder.Encode(gw)
	if err != nil {
		zap.L().Error("encode snapshot failed", zap.Error(err))
		return nil, err
	}

	err = gw.Close()
	if err != nil {
		zap.L().Error("close gzip writer failed", zap.Error(err))
		return nil, err
	}

	return buffer.Bytes(), nil
}

// unzip gunzip and decode
func unzip(zipped []byte, decoder quotes.Decoder) error {
	gr, err := gzip.NewReader(bytes.NewReader(zipped))
	if err != nil {
		zap.L().Error("create gzip reader failed", zap.Error(err))
		return err
	}
	defer gr.Close()

	err = decoder.Decode(gr)
	if err != nil {
		zap.L().Error("decode snapshot failed", zap.Error(err))
		return err
	}

	return nil
}
