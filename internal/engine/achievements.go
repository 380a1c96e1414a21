package engine

import (
	"context"

	"empireos/internal/content"
)

// Achievement is a milestone badge derived from session progress.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements the session has earned.
type AchievementChecker struct {
	stats     Stats
	completed map[string]bool
	catalog   *content.Catalog
	stages    map[Stage]int
}

func NewAchievementChecker(stats Stats, completed map[string]bool, catalog *content.Catalog, stages map[Stage]int) *AchievementChecker {
	return &AchievementChecker{
		stats:     stats,
		completed: completed,
		catalog:   catalog,
		stages:    stages,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Checklist milestones
		c.checklistAchievement("first_step", "First Step", "Check off an action item", "🌱", 1),
		c.percentAchievement("halfway", "Halfway There", "Finish half the course", "🌿", 50),
		c.percentAchievement("graduate", "Graduate", "Finish every action item", "🎓", 100),
		c.moduleAchievement("module_master", "Module Master", "Finish every item in one module", "📚"),

		// Factory milestones
		c.liveAchievement("first_launch", "First Launch", "Take a batch live", "🚀", 1),
		c.liveAchievement("ten_stores", "Ten Store Empire", "Have 10 batches live", "🏬", 10),
		c.pipelineAchievement("full_pipeline", "Full Pipeline", "Have a batch in every stage", "🏭"),

		// Tier milestones
		c.tierAchievement("merchant", "Merchant", "Reach the Merchant tier", "🛍️", TierMerchant),
		c.tierAchievement("tycoon", "Tycoon", "Reach the Tycoon tier", "👑", TierTycoon),
		c.tierAchievement("emperor", "Emperor", "Reach the Emperor tier", "⚡", TierEmperor),
	}
}

// CountEarned returns how many of the badges have been earned.
func CountEarned(badges []Achievement) int {
	count := 0
	for _, a := range badges {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) checklistAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.stats.Completed >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) percentAchievement(id, name, desc, icon string, percent int) Achievement {
	earned := c.stats.Total > 0 && c.stats.Percent >= percent
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) moduleAchievement(id, name, desc, icon string) Achievement {
	earned := false
	if c.catalog != nil {
		for _, m := range c.catalog.Modules() {
			if len(m.ActionItems) > 0 && ModuleComplete(m, c.completed) {
				earned = true
				break
			}
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) liveAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.stats.LiveCount >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) pipelineAchievement(id, name, desc, icon string) Achievement {
	earned := true
	for _, st := range stageOrder {
		if c.stages[st] == 0 {
			earned = false
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) tierAchievement(id, name, desc, icon string, tier Tier) Achievement {
	earned := c.stats.Tier.Rank() >= tier.Rank()
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// ModuleComplete reports whether every action item of m is checked.
func ModuleComplete(m content.Module, completed map[string]bool) bool {
	for _, it := range m.ActionItems {
		if !completed[it.ID] {
			return false
		}
	}
	return true
}

// GetAchievementsForSession is a convenience function.
func GetAchievementsForSession(ctx context.Context, svc *Service) ([]Achievement, error) {
	completed, err := svc.CompletedMap(ctx)
	if err != nil {
		return nil, err
	}
	stages, err := svc.CountByStage(ctx)
	if err != nil {
		return nil, err
	}
	stats := Progress(completed, svc.Catalog().ActionItemCount(), stages[StageLive])
	checker := NewAchievementChecker(stats, completed, svc.Catalog(), stages)
	return checker.GetAchievements(), nil
}
