package usecases

import (
	"fmt"
	"time"

	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

// StatsQuery selects the reporting window. StartDate and EndDate are
// YYYY-MM-DD in the business timezone and only read for the custom period.
type StatsQuery struct {
	Period    string
	StartDate string
	EndDate   string
}

type dateRange struct {
	period string
	from   time.Time
	to     time.Time
}

func (r dateRange) cacheKey(kind string) string {
	return fmt.Sprintf("%s:%s:%d:%d", kind, r.period, r.from.Unix(), r.to.Unix())
}

// resolveRange turns a query into an inclusive UTC range. A custom period
// missing either bound falls back to today.
func resolveRange(q StatsQuery, now time.Time) (dateRange, error) {
	period := q.Period
	if period == "" {
		period = PeriodToday
	}

	biz := biztime.ToBizTimezone(now)
	r := dateRange{period: period}
	switch period {
	case PeriodCustom:
		if q.StartDate == "" || q.EndDate == "" {
			r.from, r.to = biztime.StartOfDayUTC(now), biztime.EndOfDayUTC(now)
			break
		}
		from, err := biztime.ParseDateInBizTimezone(q.StartDate)
		if err != nil {
			return dateRange{}, errors.NewValidationError("开始日期格式错误", err.Error())
		}
		to, err := biztime.ParseDateInBizTimezone(q.EndDate)
		if err != nil {
			return dateRange{}, errors.NewValidationError("结束日期格式错误", err.Error())
		}
		if to.Before(from) {
			return dateRange{}, errors.NewValidationError("结束时间不能早于开始时间")
		}
		r.from, r.to = from, biztime.EndOfDayUTC(to)
	case PeriodToday:
		r.from, r.to = biztime.StartOfDayUTC(now), biztime.EndOfDayUTC(now)
	case PeriodWeek:
		r.from, r.to = biztime.StartOfWeekUTC(now), biztime.EndOfWeekUTC(now)
	case PeriodMonth:
		r.from, r.to = biztime.StartOfMonthUTC(biz.Year(), biz.Month()), biztime.EndOfMonthUTC(biz.Year(), biz.Month())
	case PeriodYear:
		r.from, r.to = biztime.StartOfYearUTC(biz.Year()), biztime.EndOfYearUTC(biz.Year())
	default:
		return dateRange{}, errors.NewValidationError(fmt.Sprintf("无效的统计周期: %s", period))
	}
	return r, nil
}
