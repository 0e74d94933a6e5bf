package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/gymslot/internal/cache"
	"github.com/GlebRadaev/gymslot/internal/config"
	"github.com/GlebRadaev/gymslot/internal/notify"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
	s.app.cfg = &config.Config{}
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestWait_CleanShutdown() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.NoError(s.app.Wait(ctx, cancel))
}

func (s *ApplicationSuite) TestSlotCache_NoRedis() {
	s.IsType(cache.Nop{}, s.app.slotCache(context.Background()))
	s.Nil(s.app.rdb)
}

func (s *ApplicationSuite) TestNotificationSink_NoBroker() {
	sink, err := s.app.notificationSink()

	s.Require().NoError(err)
	s.IsType(notify.LogSink{}, sink)
	s.Nil(s.app.broker)
}
