package awsconfig

import (
	"github.com/synfinatic/ssocreds/internal/logger"
)

var log logger.CustomLogger

func init() {
	log = logger.GetLogger()
}
