package config

// Template은 devboot init이 생성하는 기본 devboot.toml 내용이다.
const Template = `# devboot configuration file

version = 1
user = "vscode"

[history]
dir = "/commandhistory"
file = ".bash_history"
prompt_command = "history -a"

[shell]
name = "zsh"
bash_profile = "~/.bashrc"
profile = "~/.zshrc"

[[aliases]]
name = "pr"
command = "poetry run"

[theme]
source = ".devcontainer/devboot.zsh-theme"
dir = "~/.oh-my-zsh/custom/themes"
key = "ZSH_THEME"

[packages]
manager = "poetry"
plugins = ["poetry-plugin-export"]
install_args = ""
# project_dir = "."

[packages.settings]
"virtualenvs.in-project" = "true"

# poetry 명령에 추가로 전달할 환경변수
# [packages.env]
# POETRY_VIRTUALENVS_PREFER_ACTIVE_PYTHON = "true"
`
