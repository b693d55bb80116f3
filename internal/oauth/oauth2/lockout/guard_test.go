/*
 * Copyright (c) 2025, the Signet project.
 *
 * The Signet project licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/signet-id/signet/internal/system/config"
)

type FailureGuardTestSuite struct {
	suite.Suite
	redis  *miniredis.Miniredis
	client goredis.UniversalClient
	guard  *FailureGuard
	ctx    context.Context
}

func TestFailureGuardSuite(t *testing.T) {
	suite.Run(t, new(FailureGuardTestSuite))
}

func (suite *FailureGuardTestSuite) SetupTest() {
	suite.redis = miniredis.RunT(suite.T())
	suite.client = goredis.NewClient(&goredis.Options{Addr: suite.redis.Addr()})
	suite.guard = NewFailureGuard(suite.client, "signet", config.LockoutConfig{
		Threshold:     3,
		WindowSeconds: 600,
	})
	suite.ctx = context.Background()
}

func (suite *FailureGuardTestSuite) TearDownTest() {
	suite.NoError(suite.client.Close())
}

func (suite *FailureGuardTestSuite) recordFailures(n int) *Status {
	var status *Status
	var err error
	for i := 0; i < n; i++ {
		status, err = suite.guard.RecordFailure(suite.ctx, "app1", "alice")
		suite.Require().NoError(err)
	}
	return status
}

func (suite *FailureGuardTestSuite) TestFailuresBelowThresholdDoNotLock() {
	status := suite.recordFailures(3)
	suite.False(status.Locked)
	suite.Equal(int64(3), status.FailureCount)
}

func (suite *FailureGuardTestSuite) TestCheckLockoutAfterThresholdReached() {
	suite.recordFailures(3)

	status, err := suite.guard.CheckLockout(suite.ctx, "app1", "alice")
	suite.Require().NoError(err)
	suite.True(status.Locked)
	suite.InDelta(600, status.RetryAfterSeconds, 2)
}

func (suite *FailureGuardTestSuite) TestFailureBeyondThresholdLocks() {
	status := suite.recordFailures(4)
	suite.True(status.Locked)
	suite.Equal(int64(4), status.FailureCount)
	suite.InDelta(600, status.RetryAfterSeconds, 2)
}

func (suite *FailureGuardTestSuite) TestCheckLockoutBeforeAnyFailure() {
	status, err := suite.guard.CheckLockout(suite.ctx, "app1", "alice")
	suite.Require().NoError(err)
	suite.False(status.Locked)
	suite.Equal(int64(0), status.FailureCount)
}

func (suite *FailureGuardTestSuite) TestCheckLockoutDoesNotAdvanceCounter() {
	suite.recordFailures(2)

	for i := 0; i < 5; i++ {
		status, err := suite.guard.CheckLockout(suite.ctx, "app1", "alice")
		suite.Require().NoError(err)
		suite.False(status.Locked)
		suite.Equal(int64(2), status.FailureCount)
	}
}

func (suite *FailureGuardTestSuite) TestEveryFailureRefreshesWindow() {
	suite.recordFailures(2)
	suite.redis.FastForward(400 * time.Second)

	suite.recordFailures(1)

	ttl := suite.redis.TTL("signet:login-fail:app1:alice")
	suite.InDelta(600, ttl.Seconds(), 2)
}

func (suite *FailureGuardTestSuite) TestLockoutExpiresWithWindow() {
	suite.recordFailures(4)
	suite.redis.FastForward(601 * time.Second)

	status, err := suite.guard.CheckLockout(suite.ctx, "app1", "alice")
	suite.Require().NoError(err)
	suite.False(status.Locked)
	suite.Equal(int64(0), status.FailureCount)
}

func (suite *FailureGuardTestSuite) TestResetClearsCounter() {
	suite.recordFailures(3)

	suite.Require().NoError(suite.guard.Reset(suite.ctx, "app1", "alice"))

	status, err := suite.guard.CheckLockout(suite.ctx, "app1", "alice")
	suite.Require().NoError(err)
	suite.False(status.Locked)
	suite.Equal(int64(0), status.FailureCount)
}

func (suite *FailureGuardTestSuite) TestCountersAreScopedPerClientAndUsername() {
	suite.recordFailures(4)

	status, err := suite.guard.RecordFailure(suite.ctx, "app1", "bob")
	suite.Require().NoError(err)
	suite.False(status.Locked)
	suite.Equal(int64(1), status.FailureCount)

	status, err = suite.guard.RecordFailure(suite.ctx, "app2", "alice")
	suite.Require().NoError(err)
	suite.False(status.Locked)
	suite.Equal(int64(1), status.FailureCount)
}

func (suite *FailureGuardTestSuite) TestDefaultsApplied() {
	guard := NewFailureGuard(suite.client, "signet", config.LockoutConfig{})
	suite.Equal(int64(DefaultThreshold), guard.threshold)
	suite.Equal(time.Duration(DefaultWindowSeconds)*time.Second, guard.window)
}
