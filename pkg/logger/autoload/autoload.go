// Package autoload initializes the global logger from LOG_* environment
// variables on import.
package autoload

import (
	configx "github.com/tanpawarit/Chative-Learning-Agents/pkg/config"
	logx "github.com/tanpawarit/Chative-Learning-Agents/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
