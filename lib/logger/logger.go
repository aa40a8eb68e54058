// Package logger constructs named sugared loggers for the vault components.
package logger

import "go.uber.org/zap"

func New(name string) (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return l.Sugar().Named(name), nil
}
