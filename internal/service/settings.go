package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"gorm.io/datatypes"

	"spikeboard/conf"
	"spikeboard/internal/backend"
	"spikeboard/internal/condition"
	"spikeboard/internal/consts"
	"spikeboard/internal/dao"
	"spikeboard/internal/model"
	"spikeboard/internal/model/entity"
	"spikeboard/internal/settings"
	"spikeboard/internal/template"
	"spikeboard/pkg/cache"
	"spikeboard/pkg/errors"
	"spikeboard/pkg/errors/ecode"
	"spikeboard/pkg/logger"
	"spikeboard/utils"
	"spikeboard/utils/uuid"
)

type SettingsService interface {
	// 拉取当前用户的配置视图，后端没存过就返回默认配置
	SettingsGet(ctx *gin.Context) (model.SettingsGetRes, error)
	// 保存配置并返回保存后的视图
	SettingsSave(ctx *gin.Context, req model.SettingsSaveReq) (model.SettingsGetRes, error)
	// 模板预览，用样例行情渲染
	TemplatePreview(ctx *gin.Context, req model.TemplatePreviewReq) (model.TemplatePreviewRes, error)
	// 条件归一化加人读摘要
	ConditionsDescribe(req model.ConditionsDescribeReq) model.ConditionsDescribeRes
	// 当前用户最近的配置快照
	SettingsRevisions(ctx *gin.Context, limit int) (model.SettingsRevisionsRes, error)
}

type settingsService struct {
	bc   *backend.Client
	ud   dao.UserDao
	rc   *redis.Client
	iSrv uuid.SnowNode
}

func NewSettingsService(bc *backend.Client, ud dao.UserDao) *settingsService {
	return &settingsService{
		bc:   bc,
		ud:   ud,
		rc:   cache.GetRedisClient(),
		iSrv: *uuid.NewNode(5),
	}
}

func settingsCacheKey(username string) string {
	return consts.SettingsCachePrefix + username
}

func settingsCacheTtl() time.Duration {
	sec := conf.AppConfig.CacheTTL.Settings
	if sec <= 0 {
		sec = 30
	}
	return time.Duration(sec) * time.Second
}

// username 从ctx里的userId查出面板账号名，后端按这个名字存配置
func (s *settingsService) username(ctx *gin.Context) (string, error) {
	userId := ctx.GetInt64(consts.UserID)
	userInfo, err := s.ud.UserGetById(ctx, userId)
	if err != nil {
		return "", err
	}
	if userInfo.Id == 0 {
		return "", errors.WithCode(ecode.RequireAuthErr, "用户不存在")
	}
	return userInfo.Username, nil
}

// buildView 把后端记录组装成前端视图，rec为nil时用默认配置
func buildView(rec *backend.UserRecord) model.SettingsGetRes {
	var opts *settings.Settings
	res := model.SettingsGetRes{}
	if rec == nil {
		opts = settings.Defaults()
	} else {
		opts = settings.Parse([]byte(rec.OptionsJSON))
		res.TgToken = rec.TgToken
		res.ChatId = rec.ChatID
	}

	res.Exchanges = opts.Exchanges
	res.ExchangeSettings = opts.ExchangeSettings
	res.PairSettings = opts.PairSettings
	res.Blacklist = opts.Blacklist
	res.MessageTemplate = opts.MessageTemplate
	res.TemplateMarkup = template.ToDisplayMarkup(opts.MessageTemplate)
	res.Timezone = opts.Timezone

	res.Templates = make([]model.ConditionalTemplateView, 0, len(opts.ConditionalTemplates))
	for i, t := range opts.ConditionalTemplates {
		res.Templates = append(res.Templates, model.ConditionalTemplateView{
			DisplayName:    t.DisplayName(i),
			Name:           t.Name,
			Enabled:        t.Enabled,
			Conditions:     t.Conditions,
			Summary:        condition.DescribeList(t.Conditions),
			Template:       t.Template,
			TemplateMarkup: template.ToDisplayMarkup(t.Template),
			ChatId:         t.ChatID,
		})
	}
	return res
}

func (s *settingsService) SettingsGet(ctx *gin.Context) (res model.SettingsGetRes, err error) {
	username, err := s.username(ctx)
	if err != nil {
		return res, err
	}

	// 先走redis，减少对后端的穿透
	key := settingsCacheKey(username)
	if data, cerr := s.rc.Get(ctx, key).Result(); cerr == nil {
		if err := json.Unmarshal([]byte(data), &res); err == nil {
			return res, nil
		}
	} else if cerr != redis.Nil {
		logger.Warnf("redis读取配置缓存失败: %v", cerr)
	}

	rec, err := s.bc.UserGet(ctx, username)
	if err != nil {
		return res, err
	}
	res = buildView(rec)

	if data, merr := json.Marshal(res); merr == nil {
		if cerr := s.rc.Set(ctx, key, data, settingsCacheTtl()).Err(); cerr != nil {
			logger.Warnf("redis写入配置缓存失败: %v", cerr)
		}
	}
	return res, nil
}

func (s *settingsService) SettingsSave(ctx *gin.Context, req model.SettingsSaveReq) (res model.SettingsGetRes, err error) {
	username, err := s.username(ctx)
	if err != nil {
		return res, err
	}

	// 前端送来的options走和后端存档相同的宽容解析，
	// 归一化之后再序列化成最小形态下发
	opts := settings.Parse(req.Options)
	optionsJSON, err := settings.Serialize(opts)
	if err != nil {
		return res, errors.Wrap(err, ecode.Unknown, "序列化配置失败")
	}

	rec := &backend.UserRecord{
		User:        username,
		TgToken:     req.TgToken,
		ChatID:      req.ChatId,
		OptionsJSON: string(optionsJSON),
	}
	if err := s.bc.UserSave(ctx, rec); err != nil {
		return res, err
	}

	// 落一条快照，保存失败不影响主流程
	rev := &entity.SettingsRevision{
		Id:       s.iSrv.GenSnowID(),
		UserId:   ctx.GetInt64(consts.UserID),
		Snapshot: datatypes.JSON(optionsJSON),
	}
	if err := s.ud.SettingsRevisionCreate(ctx, rev); err != nil {
		logger.Warnf("配置快照保存失败: %v", err)
	}

	if err := s.rc.Del(ctx, settingsCacheKey(username)).Err(); err != nil {
		logger.Warnf("redis删除配置缓存失败: %v", err)
	}
	return buildView(rec), nil
}

// previewVars 样例行情，给模板预览用
func previewVars(timezone string) map[string]string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return map[string]string{
		"{delta_formatted}":  "+5.2%",
		"{direction}":        "UP",
		"{exchange_market}":  "Binance Futures",
		"{symbol}":           "BTCUSDT",
		"{volume_formatted}": utils.FormatThousands(1250000) + " USDT",
		"{shadow_formatted}": "1.8%",
		"{time_formatted}":   now.Format(consts.TimeLayout),
		"{timestamp}":        strconv.FormatInt(now.Unix(), 10),
	}
}

func (s *settingsService) TemplatePreview(ctx *gin.Context, req model.TemplatePreviewReq) (res model.TemplatePreviewRes, err error) {
	raw := req.Template
	if req.Markup {
		raw = template.FromDisplayMarkup(raw)
	}
	technical := template.MigrateLegacy(template.ToTechnical(raw))

	// 请求里带了合法时区就直接用，否则取已保存配置。
	// SettingsGet走redis缓存，连续预览不会穿透到后端
	timezone := strings.TrimSpace(req.Timezone)
	if _, lerr := time.LoadLocation(timezone); timezone == "" || lerr != nil {
		timezone = settings.DefaultTimezone
		if view, verr := s.SettingsGet(ctx); verr == nil {
			timezone = view.Timezone
		}
	}

	res.Technical = technical
	res.Friendly = template.ToFriendly(technical)
	res.Markup = template.ToDisplayMarkup(res.Friendly)
	res.Preview = template.Render(technical, previewVars(timezone))
	return res, nil
}

func (s *settingsService) ConditionsDescribe(req model.ConditionsDescribeReq) model.ConditionsDescribeRes {
	conds := condition.NormalizeAll(req.Conditions)
	return model.ConditionsDescribeRes{
		Conditions: conds,
		Summary:    condition.DescribeList(conds),
	}
}

func (s *settingsService) SettingsRevisions(ctx *gin.Context, limit int) (res model.SettingsRevisionsRes, err error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	revs, err := s.ud.SettingsRevisionsGet(ctx, ctx.GetInt64(consts.UserID), limit)
	if err != nil {
		return res, err
	}
	res.Revisions = make([]model.SettingsRevisionView, 0, len(revs))
	for _, rev := range revs {
		res.Revisions = append(res.Revisions, model.SettingsRevisionView{
			Id:        rev.Id,
			Snapshot:  json.RawMessage(rev.Snapshot),
			CreatedAt: rev.CreatedAt,
		})
	}
	return res, nil
}
