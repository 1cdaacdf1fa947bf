package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskup/internal/model"
	"taskup/internal/pkg/config"
	"taskup/internal/repository"
	"taskup/internal/service"
)

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	verification  service.VerificationService
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
	db            *gorm.DB
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(db *gorm.DB, logger *zap.Logger, verification service.VerificationService) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		verification:  verification,
		projectRepo:   repository.NewProjectRepository(db),
		taskRepo:      repository.NewTaskRepository(db),
		db:            db,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.Config) error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	purgeCron := cfg.Scheduler.VerificationPurgeCron
	if purgeCron == "" {
		purgeCron = "0 * * * * *" // 默认: 每分钟
		log.Warn("未配置scheduler.verification_purge_cron，使用默认值", zap.String("cron", purgeCron))
	}

	entryID, err := s.cron.AddFunc(purgeCron, func() {
		if purged := s.verification.Purge(); purged > 0 {
			log.Infof("验证码清理任务完成, 清理 %d 条", purged)
		}
	})
	if err != nil {
		log.Errorf("注册验证码清理任务失败: %v", err)
		return err
	}
	s.cronSchedules["verification_purge"] = entryID
	log.Infof("验证码清理任务已注册: %s entry_id=%d", purgeCron, entryID)

	recomputeCron := cfg.Scheduler.ProgressRecomputeCron
	if recomputeCron == "" {
		recomputeCron = "0 */10 * * * *" // 默认: 每10分钟
		log.Warn("未配置scheduler.progress_recompute_cron，使用默认值", zap.String("cron", recomputeCron))
	}

	entryID, err = s.cron.AddFunc(recomputeCron, func() {
		log.Info("执行定时任务: 项目进度重算")
		if err := s.RecomputeProgress(); err != nil {
			log.Errorf("项目进度重算任务执行失败: %v", err)
		}
	})
	if err != nil {
		log.Errorf("注册项目进度重算任务失败: %v", err)
		return err
	}
	s.cronSchedules["progress_recompute"] = entryID
	log.Infof("项目进度重算任务已注册: %s entry_id=%d", recomputeCron, entryID)

	// 启动 cron
	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// RecomputeProgress 按已完成任务占比重算全部存活项目的进度
func (s *Scheduler) RecomputeProgress() error {
	var projectIds []string
	err := s.db.Model(&model.Project{}).
		Where("is_deleted = ?", false).
		Pluck("id", &projectIds).Error
	if err != nil {
		return err
	}

	for _, projectId := range projectIds {
		total, completed, err := s.taskRepo.CountByProject(projectId)
		if err != nil {
			s.logger.Sugar().Warnf("统计项目 %s 任务失败: %v", projectId, err)
			continue
		}
		if total == 0 {
			continue
		}

		progress := int(completed * 100 / total)
		if err := s.projectRepo.UpdateProgress(projectId, progress); err != nil {
			s.logger.Sugar().Warnf("更新项目 %s 进度失败: %v", projectId, err)
		}
	}
	return nil
}
