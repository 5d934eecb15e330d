package blogservice

import (
	"github.com/sushihentaime/blogapp/internal/common"
)

func validateName(v *common.Validator, name string) {
	v.Check(v.NotBlank(name), "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 255), "name", "must not be more than 255 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
}

func validateCommentText(v *common.Validator, text string) {
	v.Check(v.NotBlank(text), "comment_text", "must be provided")
	v.Check(v.CheckStringLength(text, 1, 5000), "comment_text", "must not be more than 5000 characters long")
}

func validateReaction(v *common.Validator, reaction Reaction) {
	v.Check(reaction != "", "reaction", "must be provided")
	v.Check(v.PermittedValue(string(reaction), string(ReactionLike), string(ReactionDislike)), "reaction", "must be either like or dislike")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
